package pipeline

import "fmt"

// classifyPrompt asks the model to answer with exactly one of the two kind
// tokens. The response is matched against the closed set in classify.
func classifyPrompt(text string) string {
	return "Analyze the following phrase and determine if it describes an 'expense' or 'income'. " +
		"Respond with ONLY the word 'expense' or 'income'. " +
		fmt.Sprintf("Phrase: '%s'", text)
}

// expenseDetailsPrompt builds the structured-extraction instruction for
// expenses. The category rules are a priority-ordered keyword heuristic
// evaluated by the model itself: the first matching rule wins and anything
// unmatched falls through to the catch-all category.
func expenseDetailsPrompt(text string) string {
	return "Ви — інтелектуальний помічник для парсингу фінансових витрат українською. " +
		"Поверніть ЛИШЕ JSON (без зайвого тексту).\n\n" +
		"Очікуваний JSON має містити поля:\n" +
		"  {\n" +
		"    \"amount\": <число (int або float)>,\n" +
		"    \"currency\": \"<трьохлітерний_код_валюти>\",\n" +
		"    \"category\": \"...\",\n" +
		"    \"description\": \"<короткий опис>\"\n" +
		"  }\n\n" +
		"Поле \"category\" може приймати одне з наступних значень:\n" +
		"  1) \"Ресторан\"\n" +
		"  2) \"доп їжа\"\n" +
		"  3) \"транспорт\"\n" +
		"  4) \"покупки\"\n" +
		"  5) \"розваги\"\n" +
		"  6) \"інше\"\n" +
		"  7) \"їжа\"\n\n" +
		"Правила присвоєння (вибирайте ПЕРШЕ правило, яке відповідає фразі):\n" +
		"  – Якщо фраза містить слова «ресторан», «кафе», «столова» (будь-яке з них) → категорія: \"Ресторан\".\n" +
		"  – Інакше, якщо фраза містить слова, що позначають дрібний перекус чи «хотілку»: «кава», «хот-дог», «Жабка», «печиво», «чай» тощо → категорія: \"доп їжа\".\n" +
		"  – Інакше, якщо фраза стосується загальних покупок продуктів, закупівлі в супермаркетах/магазинах, або щомісячних витрат на харчування: «продукти», «закупка», «супермаркет», «магазин», «щомісячні витрати на їжу», «бідронка» тощо → категорія: \"їжа\".\n" +
		"  – Інакше, якщо фраза стосується пересування: «таксі», «Uber», «Bolt», «метро», «автобус» тощо → категорія: \"транспорт\".\n" +
		"  – Інакше, якщо фраза про придбання речей або послуг у магазинах (окрім харчових): «купив футболку», «ремонт техніки», «квитки», «пакет» тощо → категорія: \"покупки\".\n" +
		"  – Інакше, якщо фраза стосується розваг: «кіно», «театр», «концерт», «відеогра», «бар з друзями» тощо → категорія: \"розваги\".\n" +
		"  – В усіх інших випадках → категорія: \"інше\".\n\n" +
		"Поле \"description\" має бути коротким поясненням суті витрати (наприклад, «обід у кафе», «хот-дог біля офісу», «квиток у кіно» чи «ремонт друкарки»).\n\n" +
		fmt.Sprintf("Фраза: '%s'", text)
}

// incomeDetailsPrompt builds the structured-extraction instruction for
// incomes: amount, currency and a free-text source, no category set.
func incomeDetailsPrompt(text string) string {
	return "You are an assistant for parsing financial income. " +
		"You receive a phrase in Ukrainian. For example: 'I earned 500 dollars from freelancing'. " +
		"Return ONLY JSON with fields: amount (integer or float), currency (string, currency code, e.g. USD, UAH, EUR, PLN), " +
		"source (string, source of income, e.g. salary, freelancing, gift). " +
		fmt.Sprintf("Phrase: '%s'", text)
}
