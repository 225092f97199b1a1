package helper

import (
	"fmt"
	"math"
	"strings"
)

// FormatDistance は距離kmを表示用の文字列に変換する（1km未満はメートル表記）
func FormatDistance(km float64) string {
	if math.IsInf(km, 1) {
		return ""
	}
	if km < 1 {
		return fmt.Sprintf("%dm away", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm away", km)
}

// Pluralize は件数に応じて英語の複数形を付ける
func Pluralize(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}

// JoinWithAnd は文章断片をカンマと"and"で自然な一文につなげる
func JoinWithAnd(fragments []string) string {
	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0]
	case 2:
		return fragments[0] + " and " + fragments[1]
	default:
		return strings.Join(fragments[:len(fragments)-1], ", ") + ", and " + fragments[len(fragments)-1]
	}
}

// FormatPrice は料金を表示用の文字列に変換する
func FormatPrice(price float64) string {
	if price == 0 {
		return "free"
	}
	return fmt.Sprintf("RM%.2f", price)
}
