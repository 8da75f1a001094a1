package tokenizer

// Options configure tokenizer behavior.
type Options struct {
	// DiscardBOM controls whether a leading U+FEFF BOM is removed from the input.
	// html5lib tokenizer tests set this per test case.
	DiscardBOM bool

	// XMLCoercion enables XML output coercions used by some test suites:
	// - U+000C FORM FEED becomes a space in text tokens
	// - Some non-XML characters become U+FFFD
	// - Comments replace "--" with "- -"
	XMLCoercion bool

	// TabStop is the column width a TAB advances to; <= 0 uses
	// cursor.DefaultTabStop.
	TabStop int

	// StopOnFirstError halts tokenization (emitting an EOF token) as soon as
	// the first parse error is recorded.
	StopOnFirstError bool

	// MaxErrors caps the number of parse errors recorded; <= 0 means
	// unlimited. Once reached, further errors are silently dropped rather
	// than halting tokenization (use StopOnFirstError for that).
	MaxErrors int
}

func defaultOptions() Options {
	return Options{
		DiscardBOM: true,
	}
}
