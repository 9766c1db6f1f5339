// Package laptime переводит строки времени заплыва (MM:SS.ss) в секунды и обратно.
//
// Время круга всегда накопительное: это время от старта заплыва,
// а не разница с предыдущим кругом.
package laptime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Zero - время нового, ещё не заполненного круга
	Zero = "00:00.00"
	// Placeholder выводится вместо времени, которое невозможно вычислить
	Placeholder = "--:--.--"
)

var (
	bareFraction = regexp.MustCompile(`^\d{1,2}\.\d{2}$`)
	ocrTime      = regexp.MustCompile(`^\d{1,2}:\d{2}\.\d{2}$`)
)

// Parse разбирает строку вида M:SS.ss, MM:SS.ss, H:MM:SS.ss или S.ss
// и возвращает часы*3600 + минуты*60 + секунды + сотые/100.
// Для некорректной строки возвращается NaN, проверяйте результат через Valid.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "0123456789") {
		return math.NaN()
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return math.NaN()
	}

	var hours, minutes float64
	rest := parts[len(parts)-1]
	switch len(parts) {
	case 3:
		h, ok := parseInt(parts[0])
		if !ok {
			return math.NaN()
		}
		hours = h
		fallthrough
	case 2:
		m, ok := parseInt(parts[len(parts)-2])
		if !ok {
			return math.NaN()
		}
		minutes = m
	}

	secStr, fracStr, hasFrac := strings.Cut(rest, ".")
	if strings.Contains(fracStr, ".") {
		return math.NaN()
	}
	seconds, ok := parseInt(secStr)
	if !ok {
		return math.NaN()
	}

	// после точки всегда сотые: "5" это 5 сотых, "123" это 1.23 с
	var hundredths float64
	if hasFrac {
		h, ok := parseInt(fracStr)
		if !ok {
			return math.NaN()
		}
		hundredths = h
	}

	return hours*3600 + minutes*60 + seconds + hundredths/100
}

// Valid сообщает, что значение получено из корректной строки.
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Format выводит секунды в виде MM:SS.ss.
// Минуты не переносятся в часы: 100 минут и больше выводятся как есть.
func Format(seconds float64) string {
	if !Valid(seconds) {
		return Placeholder
	}

	hundredths := int64(math.Round(seconds * 100))
	minutes := hundredths / 6000
	rest := hundredths % 6000

	return fmt.Sprintf("%02d:%02d.%02d", minutes, rest/100, rest%100)
}

// FormatDelta выводит разницу во времени со знаком: +00:01.20, -00:00.35.
func FormatDelta(delta float64) string {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return Placeholder
	}
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return sign + Format(delta)
}

// Canonicalize приводит корректную строку времени к виду MM:SS.ss.
func Canonicalize(s string) (string, bool) {
	v := Parse(s)
	if !Valid(v) {
		return "", false
	}
	return Format(v), true
}

// NormalizeOCR приводит токен, распознанный OCR, к виду MM:SS.ss.
// Дробь без минут (29.80) считается временем меньше минуты.
// Токены, не похожие на время, отбрасываются.
func NormalizeOCR(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if bareFraction.MatchString(token) {
		token = "0:" + token
	}
	if !ocrTime.MatchString(token) {
		return "", false
	}

	minutes, rest, _ := strings.Cut(token, ":")
	seconds, hundredths, _ := strings.Cut(rest, ".")

	return fmt.Sprintf("%s:%s.%s", padLeft(minutes, 2), padLeft(seconds, 2), padRight(hundredths, 2)), true
}

// NormalizeOCRTokens нормализует все токены и возвращает принятые в исходном порядке
// вместе с количеством отброшенных.
func NormalizeOCRTokens(tokens []string) ([]string, int) {
	accepted := make([]string, 0, len(tokens))
	dropped := 0
	for _, t := range tokens {
		v, ok := NormalizeOCR(t)
		if !ok {
			dropped++
			continue
		}
		accepted = append(accepted, v)
	}
	return accepted, dropped
}

func parseInt(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	if !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}
