package views

import (
	"fmt"
	"time"

	"github.com/oliverisaac/gratitude/types"
)

// korean maps each English UI string to its Korean form. Strings without an
// entry render in English.
var korean = map[string]string{
	"Gratitude Journal":                      "감사 일기",
	"Sign in":                                "로그인",
	"Sign up":                                "회원가입",
	"Sign out":                               "로그아웃",
	"Username":                               "아이디",
	"Password":                               "비밀번호",
	"New username":                           "새 아이디",
	"New password":                           "새 비밀번호",
	"Role":                                   "역할",
	"student":                                "학생",
	"teacher":                                "교사",
	"Write":                                  "쓰기",
	"Calendar":                               "달력",
	"Shared":                                 "공유",
	"Stats":                                  "통계",
	"All students":                           "전체 학생",
	"Today's gratitude journal":              "오늘의 감사 일기",
	"Entry":                                  "감사",
	"Who or what are you grateful to?":       "누구에게 또는 무엇에 감사한가요?",
	"What happened?":                         "어떤 일이 있었나요?",
	"AI feedback":                            "AI 피드백",
	"Share with other students":              "다른 학생들과 공유하기",
	"Get AI feedback":                        "AI 피드백 받기",
	"Save":                                   "저장",
	"My journal calendar":                    "나의 일기 달력",
	"Sun":                                    "일",
	"Mon":                                    "월",
	"Tue":                                    "화",
	"Wed":                                    "수",
	"Thu":                                    "목",
	"Fri":                                    "금",
	"Sat":                                    "토",
	"written":                                "작성함",
	"To:":                                    "대상:",
	"Nothing was written on this day.":       "이 날에는 작성한 일기가 없습니다.",
	"Shared by other students":               "친구들이 공유한 일기",
	"No shared entries yet.":                 "아직 공유된 일기가 없습니다.",
	"My statistics":                          "나의 통계",
	"Days written":                           "작성한 날",
	"Entries written":                        "작성한 감사",
	"Remind me every evening":                "매일 저녁 알림 받기",
	"Student":                                "학생",
	"Date":                                   "날짜",
	"Target":                                 "대상",
	"Content":                                "내용",
	"Show":                                   "보기",
	"Download CSV":                           "CSV 다운로드",
	"No entries.":                            "작성된 일기가 없습니다.",
	"Write something first":                  "먼저 내용을 작성해 주세요",
	"Saved %d gratitude entries. Well done!": "감사 일기 %d개를 저장했습니다. 잘했어요!",
	"Username and password are required":     "아이디와 비밀번호를 입력해 주세요",
	"Pick either student or teacher":         "학생 또는 교사를 선택해 주세요",
	"That username already exists":           "이미 존재하는 아이디입니다",
	"Sign up complete. You can sign in now.": "회원가입이 완료되었습니다. 이제 로그인할 수 있습니다.",
	"Invalid username or password":           "아이디 또는 비밀번호가 올바르지 않습니다",
	"Internal server error":                  "서버 오류가 발생했습니다",
}

// T translates msg into locale.
func T(locale, msg string) string {
	if locale == "ko" {
		if s, ok := korean[msg]; ok {
			return s
		}
	}
	return msg
}

// Tf translates format into locale and fills it in.
func Tf(locale, format string, args ...any) string {
	return fmt.Sprintf(T(locale, format), args...)
}

// monthTitle renders a YYYY-MM month for the heading of the calendar.
func monthTitle(locale, month string) string {
	m, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return month
	}
	if locale == "ko" {
		return fmt.Sprintf("%d년 %d월", m.Year(), int(m.Month()))
	}
	return m.Format("January 2006")
}

func weekdays() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}

// entryData is what the shared entry card renders.
type entryData struct {
	Locale string
	Meta   string
	Entry  types.JournalEntry
}

func entryView(locale, meta string, e types.JournalEntry) entryData {
	return entryData{Locale: locale, Meta: meta, Entry: e}
}
