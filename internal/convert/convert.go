// Package convert turns Hevy workouts into Notion request payloads.
package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/hevy2notion/internal/models"
)

// DefaultProperty is the rich text property that receives the workout title.
const DefaultProperty = "Treino"

// Description renders a workout as plain text, one exercise title followed
// by one line per set and a blank separator line. Source order is kept.
func Description(w models.Workout) string {
	var lines []string
	for _, ex := range w.Exercises {
		lines = append(lines, ex.Title)
		for i, set := range ex.Sets {
			lines = append(lines, setLine(i+1, set))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// setLine formats one set as "Série n: [w kg x ]reps [@ rpe rpe][ [type]]".
// Zero weight or RPE is treated as not recorded.
func setLine(n int, set models.WorkoutSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Série %d: ", n)
	if recorded(set.WeightKg) {
		b.WriteString(formatNumber(*set.WeightKg))
		b.WriteString(" kg x ")
	}
	b.WriteString(strconv.Itoa(set.Reps))
	b.WriteString(" ")
	if recorded(set.RPE) {
		b.WriteString("@ ")
		b.WriteString(formatNumber(*set.RPE))
		b.WriteString(" rpe")
	}
	if t := set.Type(); t != models.SetTypeNormal {
		b.WriteString(" [")
		b.WriteString(t)
		b.WriteString("]")
	}
	return b.String()
}

func recorded(v *float64) bool {
	return v != nil && *v != 0
}

// formatNumber prints the shortest decimal form: 100, 72.5, 8.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TitleProperties builds the page update that writes the workout title into
// the named rich text property.
func TitleProperties(w models.Workout, property string) models.PageUpdate {
	if property == "" {
		property = DefaultProperty
	}
	return models.PageUpdate{
		Properties: map[string]models.PropertyValue{
			property: {RichText: []models.RichText{{Text: models.TextSpan{Content: w.Title}}}},
		},
	}
}

// WorkoutBlocks builds the blocks appended to the page: a heading with the
// workout title and a paragraph with its Description.
func WorkoutBlocks(w models.Workout) models.BlockChildren {
	return models.BlockChildren{
		Children: []models.Block{
			{
				Object:   "block",
				Type:     models.BlockTypeHeading2,
				Heading2: &models.BlockContent{RichText: text(w.Title)},
			},
			{
				Object:    "block",
				Type:      models.BlockTypeParagraph,
				Paragraph: &models.BlockContent{RichText: text(Description(w))},
			},
		},
	}
}

// MaxTextLength is the longest content Notion accepts in one rich text
// object, in characters.
const MaxTextLength = 2000

// text splits content into rich text objects of at most MaxTextLength
// characters each.
func text(content string) []models.RichText {
	var out []models.RichText
	runes := []rune(content)
	for len(runes) > MaxTextLength {
		out = append(out, textSpan(string(runes[:MaxTextLength])))
		runes = runes[MaxTextLength:]
	}
	return append(out, textSpan(string(runes)))
}

func textSpan(content string) models.RichText {
	return models.RichText{Type: "text", Text: models.TextSpan{Content: content}}
}
