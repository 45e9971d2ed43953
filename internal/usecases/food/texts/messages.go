package texts

// Тексты бота. Отправляются без parse_mode, звёздочки видны как есть.

const AnalysisPrompt = `Analyze this food image carefully.
Describe visible food items, approximate portion sizes (small/medium/large or rough grams if possible),
cooking method if visible, and estimate total calories.
Use realistic nutritional knowledge (USDA-style averages). Break down by item if multiple foods are present.
Be conservative and realistic in your estimates.
The output style should be:
🍽️Recognized: Nasi Lemak with fried chicken, cucumber, egg & sambal
💪Protein: 38g 🥔Carbs: 92g 🧈Fat: 45g 🍬Sugar: 10g
🔥Calories: 850 kcal
and provide some tips at the end for the user.`

const (
	welcomeTemplate = "Hi! 👋 Send me a photo of food to estimate calories.\n\n" +
		"%s\n" +
		"Commands: /history • /bmr • /setprofile • /clearprofile • /clear (meals)"

	bmrLineTemplate   = "Your BMR: ≈%.0f kcal/day\n"
	BMRLineIncomplete = "Profile data incomplete — please use /setprofile to finish or correct it\n"
	BMRLineMissing    = "Set your profile with /setprofile to see your BMR\n"

	TextHint = "Send me a photo of food to estimate calories, or use /setprofile to set your profile."
)

// Профиль
const (
	SelectSex       = "Please select your sex:"
	SexButtonMale   = "Male"
	SexButtonFemale = "Female"

	sexSetTemplate = "Sex set to %s.\n\nNow enter your age (years):"
	AskHeight      = "Enter your height in cm (e.g. 168):"
	AskWeight      = "Enter your weight in kg (e.g. 65.5):"

	InvalidAge    = "Please enter a realistic age (10–120). Try again:"
	InvalidHeight = "Please enter height in cm (100–250). Try again:"
	InvalidWeight = "Please enter weight in kg (30–300). Try again:"

	profileSavedTemplate = "✅ Profile saved!\n\n" +
		"Sex: %s\n" +
		"Age: %d years\n" +
		"Height: %s cm\n" +
		"Weight: %s kg\n\n" +
		"Your BMR (Mifflin-St Jeor): **%.0f kcal/day**\n" +
		"(this is calories your body burns at complete rest)"

	ProfileCleared = "🗑️ Your profile and BMR data have been cleared."
	AllCleared     = "🗑️ Your profile and all history have been cleared."

	BMRNoProfile  = "You haven't set your profile yet.\nUse /setprofile to enter sex, age, height & weight."
	BMRIncomplete = "Profile data incomplete. Please use /setprofile again."

	bmrTemplate = "📋 Your profile:\n" +
		"• Sex: %s\n" +
		"• Age: %d years\n" +
		"• Height: %s cm\n" +
		"• Weight: %s kg\n\n" +
		"🔥 **BMR: %.0f kcal/day**\n" +
		"(Basal Metabolic Rate – calories burned at rest)"
)

// История
const (
	HistoryEmpty   = "No history yet. Send a food photo to start! 📸"
	historyHeader  = "📊 **Your calorie summary**\nTotal calories (all records): **%.0f kcal**\n\nRecent %d records:\n\n"
	historyRecord  = "📅 %s\n🍽️ %s\n💪 Protein: %sg   🥔 Carbs: %sg\n🧈 Fat: %sg   🍬 Sugar: %sg\n🔥 %s kcal\n───\n"
	HistoryCleared = "🗑️ Your history has been cleared!"

	HistoryTimeLayout = "2006-01-02 15:04:05"
)

// Анализ фото
const (
	AnalysisEmpty    = "Couldn't analyze – try a clearer photo!"
	AskSave          = "\n\nWould you like to save this record?"
	SaveButtonYes    = "Yes, save this"
	SaveButtonNo     = "No, thanks"
	AnalysisCooldown = "Please wait a few seconds before sending another photo ⏳"

	SavedSuffix    = "\n\n✅ Saved!"
	NotSavedSuffix = "\n\nNot saved."
	NotSaved       = "Not saved"
	SaveFailed     = "Couldn't save the record – please tap the button again."

	FailureThrottled   = "Rate limit – wait 1–2 min ⏳"
	FailureUnavailable = "Model temporarily unavailable – try again soon"
	failureGeneric     = "Error: %s..."
)

// Кнопки и сессии
const (
	SessionExpired         = "Session expired."
	AnalysisSessionExpired = "Session expired. Please send photo again."
	InvalidAction          = "Invalid action"

	SomethingWentWrong = "Something went wrong – please try again later."
)
