// Package assessment implements the archetype trigger assessment: the fixed
// question taxonomy, score normalisation, ranking, and the one-pass
// question session.
package assessment

import "github.com/rcliao/shadow-journal/internal/model"

// MaxRating is the highest rating a question accepts. Ratings run
// 0 (not triggering), 1 (somewhat), 2 (very triggering).
const MaxRating = 2

// RatingLabels names each rating value.
var RatingLabels = [MaxRating + 1]string{"Not triggering", "Somewhat", "Very triggering"}

// Questions is the trigger identifier taxonomy, five per archetype.
var Questions = []model.Question{
	{ID: "1", Text: "When someone is lazy and doesn't pull their weight", Category: model.Tyrant},
	{ID: "2", Text: "When things don't go according to plan", Category: model.Tyrant},
	{ID: "3", Text: "When someone does something inefficiently or 'the wrong way'", Category: model.Tyrant},
	{ID: "4", Text: "When someone breaks the rules just for the sake of it", Category: model.Tyrant},
	{ID: "5", Text: "When people are incompetent or can't do things correctly", Category: model.Tyrant},

	{ID: "6", Text: "When I feel powerless to change my circumstances", Category: model.Victim},
	{ID: "7", Text: "When others seem to have it easier than me", Category: model.Victim},
	{ID: "8", Text: "When people don't understand how hard things are for me", Category: model.Victim},
	{ID: "9", Text: "When I feel like life is unfair to me", Category: model.Victim},
	{ID: "10", Text: "When circumstances beyond my control ruin my plans", Category: model.Victim},

	{ID: "11", Text: "When my efforts go unnoticed or unappreciated", Category: model.Martyr},
	{ID: "12", Text: "When others ask for help but don't reciprocate", Category: model.Martyr},
	{ID: "13", Text: "When someone sets boundaries with me", Category: model.Martyr},
	{ID: "14", Text: "When I feel taken advantage of after helping others", Category: model.Martyr},
	{ID: "15", Text: "When others don't acknowledge my sacrifices", Category: model.Martyr},

	{ID: "16", Text: "When I'm close to achieving a goal and suddenly lose motivation", Category: model.Saboteur},
	{ID: "17", Text: "When someone procrastinates on important things", Category: model.Saboteur},
	{ID: "18", Text: "When perfectionism prevents me from finishing projects", Category: model.Saboteur},
	{ID: "19", Text: "When I sabotage my own success or opportunities", Category: model.Saboteur},
	{ID: "20", Text: "When I find myself making excuses for not following through", Category: model.Saboteur},

	{ID: "21", Text: "When someone is highly critical or judgmental of others", Category: model.Judge},
	{ID: "22", Text: "When people don't meet my standards", Category: model.Judge},
	{ID: "23", Text: "When I make a mistake or look foolish", Category: model.Judge},
	{ID: "24", Text: "When someone is arrogant or acts superior", Category: model.Judge},
	{ID: "25", Text: "When people are sloppy, careless, or mediocre", Category: model.Judge},

	{ID: "26", Text: "When authority figures tell me what to do", Category: model.Rebel},
	{ID: "27", Text: "When I feel pressured to conform or fit in", Category: model.Rebel},
	{ID: "28", Text: "When someone tries to control my choices or freedom", Category: model.Rebel},
	{ID: "29", Text: "When I'm expected to follow rules I don't agree with", Category: model.Rebel},
	{ID: "30", Text: "When someone is a 'control freak' and tries to micromanage me", Category: model.Rebel},
}

// maxPerCategory is the normalisation divisor per archetype, fixed by the
// taxonomy rather than by how many questions were answered.
var maxPerCategory = func() [model.NumArchetypes]int {
	var m [model.NumArchetypes]int
	for _, q := range Questions {
		m[q.Category] += MaxRating
	}
	return m
}()

// MaxScore returns the highest raw sum a category can reach.
func MaxScore(a model.Archetype) int {
	return maxPerCategory[a]
}
