package main

import (
	"time"

	"github.com/gorilla/securecookie"
	"github.com/oliverisaac/gratitude/lib/journal"
	"github.com/sirupsen/logrus"
)

const previewSealName = "preview-feedback"

// previewSeal signs preview feedback together with the content it was
// generated for. The write form carries the signed value in a hidden field so
// a later save can reuse the feedback without trusting the browser.
type previewSeal struct {
	codec *securecookie.SecureCookie
}

type sealedFeedback struct {
	Content  string
	Feedback string
}

func newPreviewSeal(secret []byte) previewSeal {
	codec := securecookie.New(secret, nil).
		MaxAge(int((24 * time.Hour).Seconds())).
		MaxLength(0)
	return previewSeal{codec: codec}
}

// seal returns the signed form value for item, or "" when it has no preview.
func (p previewSeal) seal(item journal.Item) string {
	if item.Feedback == "" || item.FeedbackFor == "" {
		return ""
	}
	token, err := p.codec.Encode(previewSealName, sealedFeedback{Content: item.FeedbackFor, Feedback: item.Feedback})
	if err != nil {
		logrus.Warnf("Failed to seal preview feedback: %v", err)
		return ""
	}
	return token
}

// open verifies token and returns the content and feedback it was sealed
// with. Anything that fails verification is dropped.
func (p previewSeal) open(token string) (content, feedback string) {
	if token == "" {
		return "", ""
	}
	var v sealedFeedback
	if err := p.codec.Decode(previewSealName, token, &v); err != nil {
		logrus.Warnf("Ignoring preview feedback that failed verification: %v", err)
		return "", ""
	}
	return v.Content, v.Feedback
}
