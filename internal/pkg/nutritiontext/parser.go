// Package nutritiontext разбирает свободный текст модели в NutritionFacts.
//
// Ожидаемый формат ответа:
//
//	🍽️Recognized: Chicken rice
//	💪Protein: 38g 🥔Carbs: 92g 🧈Fat: 45g 🍬Sugar: 10g
//	🔥Calories: 850 kcal
//	советы...
//
// Формат не гарантирован, поэтому Parse никогда не возвращает ошибку:
// всё, что не удалось извлечь, остаётся значением по умолчанию.
package nutritiontext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
)

const (
	recognizedLabel = "Recognized:"
	caloriesLabel   = "Calories:"
)

var (
	macroLabels = []string{"Protein:", "Carbs:", "Fat:", "Sugar:"}

	decorativeGlyphs = strings.NewReplacer(
		"💪", "",
		"🥔", "",
		"🧈", "",
		"🍬", "",
		"🔥", "",
		"\u200b", "",
	)

	pairPattern   = regexp.MustCompile(`(\w+):\s*([\d.]+)g?`)
	numberPattern = regexp.MustCompile(`\d+\.?\d*`)
)

// Parse извлекает структуру из ответа модели
func Parse(raw string) domain.NutritionFacts {
	facts := domain.EmptyNutritionFacts()

	lines := splitLines(raw)
	if len(lines) == 0 {
		return facts
	}

	if _, after, ok := strings.Cut(lines[0], recognizedLabel); ok {
		if recognized := strings.TrimSpace(after); recognized != "" {
			facts.Recognized = recognized
		}
	}

	var macroLine, caloriesLine string
	for _, line := range lines {
		if isMacroLine(line) {
			macroLine = line
		}
		if strings.Contains(line, caloriesLabel) {
			caloriesLine = line
		}
	}

	if macroLine != "" {
		applyMacros(&facts, macroLine)
	}

	if caloriesLine != "" {
		facts.Calories = parseCalories(caloriesLine)
	}

	facts.Tips = collectTips(lines)

	return facts
}

func splitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if line := strings.TrimSpace(part); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isMacroLine строка содержит хотя бы две метки из Protein/Carbs/Fat/Sugar
func isMacroLine(line string) bool {
	found := 0
	for _, label := range macroLabels {
		if strings.Contains(line, label) {
			found++
		}
	}
	return found >= 2
}

func applyMacros(facts *domain.NutritionFacts, line string) {
	clean := decorativeGlyphs.Replace(line)

	for _, match := range pairPattern.FindAllStringSubmatch(clean, -1) {
		value, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}

		key := strings.ToLower(match[1])
		switch {
		case strings.Contains(key, "protein"):
			facts.Protein = value
		case strings.Contains(key, "carb"):
			facts.Carbs = value
		case strings.Contains(key, "fat"):
			facts.Fat = value
		case strings.Contains(key, "sugar"):
			facts.Sugar = value
		}
	}
}

func parseCalories(line string) float64 {
	_, after, _ := strings.Cut(line, caloriesLabel)

	num := numberPattern.FindString(after)
	if num == "" {
		return 0
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return value
}

// collectTips всё после первой строки с калориями, сами строки с калориями пропускаются
func collectTips(lines []string) string {
	var tips []string
	started := false
	for _, line := range lines {
		if strings.Contains(line, caloriesLabel) {
			started = true
			continue
		}
		if started {
			tips = append(tips, line)
		}
	}
	return strings.Join(tips, " ")
}
