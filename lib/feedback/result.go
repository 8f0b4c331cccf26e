package feedback

// Result is the outcome of one feedback generation. Exactly one of Text
// (possibly empty) or Err is meaningful.
type Result struct {
	Text string
	Err  error
}

func Success(text string) Result {
	return Result{Text: text}
}

func Failure(err error) Result {
	return Result{Err: err}
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Display returns the text to show and store, substituting placeholder for
// a failed generation.
func (r Result) Display(placeholder string) string {
	if r.Err != nil {
		return placeholder
	}
	return r.Text
}
