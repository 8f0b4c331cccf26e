package feedback

import "fmt"

const (
	englishPrompt = "This is a gratitude journal entry written by a student:\n\n\"%s\"\n\n" +
		"If it contains any negative expressions, help turn them into positive thinking. " +
		"Write warm, short feedback in one or two sentences that helps the student feel grateful on their own."

	koreanPrompt = "학생이 작성한 감사일기입니다:\n\n\"%s\"\n\n" +
		"이 글에서 혹시 부정적 표현이 있다면 긍정적 사고로 전환하도록 도와주고, " +
		"학생이 스스로 감사함을 느낄 수 있도록 짧고 따뜻하게 한두 문장으로 피드백을 작성해주세요."
)

// Placeholders shown in place of feedback that could not be generated.
var placeholders = map[string]string{
	"en": "AI feedback could not be generated this time.",
	"ko": "AI 피드백 생성에 실패했습니다.",
}

func Prompt(locale, content string) string {
	if locale == "ko" {
		return fmt.Sprintf(koreanPrompt, content)
	}
	return fmt.Sprintf(englishPrompt, content)
}

func Placeholder(locale string) string {
	if p, ok := placeholders[locale]; ok {
		return p
	}
	return placeholders["en"]
}
