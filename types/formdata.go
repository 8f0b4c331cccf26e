package types

// WriteSlot is one target/content pair on the write form along with any
// feedback already generated for it. FeedbackToken is the signed copy of that
// feedback sent back on save.
type WriteSlot struct {
	Number        int
	Target        string
	Content       string
	Feedback      string
	FeedbackToken string
}

type WriteForm struct {
	Slots  []WriteSlot
	Shared bool
	Error  error
}

// NewWriteForm returns a form with every slot empty.
func NewWriteForm() WriteForm {
	slots := make([]WriteSlot, MaxEntriesPerSubmission)
	for i := range slots {
		slots[i].Number = i + 1
	}
	return WriteForm{Slots: slots}
}

func (f WriteForm) WithError(err error) WriteForm {
	f.Error = err
	return f
}
