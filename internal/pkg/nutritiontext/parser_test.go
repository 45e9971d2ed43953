package nutritiontext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chungjai123/food-bot/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.NutritionFacts
	}{
		{
			name: "well formed",
			raw:  "🍽️Recognized: Chicken rice\n💪Protein: 38g 🥔Carbs: 92g 🧈Fat: 45g 🍬Sugar: 10g\n🔥Calories: 850 kcal\nDrink more water.",
			want: domain.NutritionFacts{
				Recognized: "Chicken rice",
				Protein:    38,
				Carbs:      92,
				Fat:        45,
				Sugar:      10,
				Calories:   850,
				Tips:       "Drink more water.",
			},
		},
		{
			name: "empty",
			raw:  "",
			want: domain.EmptyNutritionFacts(),
		},
		{
			name: "garbage",
			raw:  "garbage text",
			want: domain.EmptyNutritionFacts(),
		},
		{
			name: "only whitespace lines",
			raw:  "\n   \n\t\n",
			want: domain.EmptyNutritionFacts(),
		},
		{
			name: "recognized not on first line",
			raw:  "Here is my estimate.\nRecognized: Pho\nCalories: 400",
			want: domain.NutritionFacts{Recognized: domain.UnknownFood, Calories: 400},
		},
		{
			name: "recognized label without text",
			raw:  "Recognized:   \nCalories: 10",
			want: domain.NutritionFacts{Recognized: domain.UnknownFood, Calories: 10},
		},
		{
			name: "decimals and zero width spaces",
			raw:  "🍽️Recognized: Salad\n💪Protein:\u200b 12.5g 🥔Carbs: 7.25g 🧈Fat: 3g\n🔥Calories: 120.5 kcal",
			want: domain.NutritionFacts{
				Recognized: "Salad",
				Protein:    12.5,
				Carbs:      7.25,
				Fat:        3,
				Calories:   120.5,
			},
		},
		{
			name: "missing calories gives no tips",
			raw:  "🍽️Recognized: Toast\n💪Protein: 4g 🥔Carbs: 20g\nEat slowly.",
			want: domain.NutritionFacts{Recognized: "Toast", Protein: 4, Carbs: 20},
		},
		{
			name: "single macro label is not a macro line",
			raw:  "Recognized: Egg\nProtein: 6g\nCalories: 70",
			want: domain.NutritionFacts{Recognized: "Egg", Calories: 70},
		},
		{
			name: "reordered sections",
			raw:  "🍽️Recognized: Burger\n🔥Calories: 700 kcal\n💪Protein: 30g 🥔Carbs: 50g 🧈Fat: 40g 🍬Sugar: 9g\nSkip the soda.",
			want: domain.NutritionFacts{
				Recognized: "Burger",
				Protein:    30,
				Carbs:      50,
				Fat:        40,
				Sugar:      9,
				Calories:   700,
				Tips:       "💪Protein: 30g 🥔Carbs: 50g 🧈Fat: 40g 🍬Sugar: 9g Skip the soda.",
			},
		},
		{
			name: "later lines override earlier ones",
			raw: "Recognized: Pasta\nProtein: 10g Carbs: 60g\nCalories: 500\n" +
				"Correction:\nProtein: 15g Carbs: 70g Fat: 12g\nCalories: 620 kcal\nTip one.\nTip two.",
			want: domain.NutritionFacts{
				Recognized: "Pasta",
				Protein:    15,
				Carbs:      70,
				Fat:        12,
				Calories:   620,
				Tips:       "Correction: Protein: 15g Carbs: 70g Fat: 12g Tip one. Tip two.",
			},
		},
		{
			name: "labels matched case-insensitively inside the pair",
			raw:  "Recognized: Curry\nProtein: 20g Carbs: 40g total_fat: 18g SUGARS: 6g\nCalories: 480",
			want: domain.NutritionFacts{
				Recognized: "Curry",
				Protein:    20,
				Carbs:      40,
				Fat:        18,
				Sugar:      6,
				Calories:   480,
			},
		},
		{
			name: "unparsable values are skipped",
			raw:  "Recognized: Soup\nProtein: .g Carbs: 1.2.3g Fat: 5g\nCalories: about kcal",
			want: domain.NutritionFacts{Recognized: "Soup", Fat: 5},
		},
		{
			name: "extra commentary and windows line endings",
			raw:  "🍽️Recognized: Ramen\r\n\r\n💪Protein: 25g 🥔Carbs: 80g 🧈Fat: 20g 🍬Sugar: 5g\r\n🔥Calories: 650 kcal\r\n  Broth is salty.  \r\n\r\nAdd greens.\r\n",
			want: domain.NutritionFacts{
				Recognized: "Ramen",
				Protein:    25,
				Carbs:      80,
				Fat:        20,
				Sugar:      5,
				Calories:   650,
				Tips:       "Broth is salty. Add greens.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}
