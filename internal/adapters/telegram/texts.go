package telegram

// Textos propios del transporte (prompts, fallback, disculpa genérica).
const (
	msgNickUsage = "Пришли игровой ник так:\n/nick ТВОЙ_НИК"
	msgUseKeys   = "Ок 🙂 Выбирай действие кнопками ниже 👇"
	msgFallback  = "Не понял действие. Попробуй снова."
	msgCancelled = "Окей, отменил 👍"
	msgOops      = "⚠️ Что-то пошло не так. Попробуй ещё раз чуть позже."
)

func welcome(publicName string) string {
	if publicName == "" {
		publicName = "Кооп-бот"
	}
	return "Привет! Я " + publicName + " 🤝\n\n" +
		"Я помогаю сокланам быстро находить напарника для коопа.\n\n" +
		"Как это работает:\n" +
		"1) «🟢 Запросить кооп» — ты в очереди.\n" +
		"2) «🔵 Ответить на кооп» — выбираешь, на чей запрос откликнуться.\n" +
		"3) Автор запроса выбирает отклик — и я соединяю вас ✅\n\n" +
		"После успешного совпадения обоим +1 в статистику.\n\n" +
		"Совет: укажи игровой ник — тогда в списках будут игровые ники.\n" +
		"Команда: /nick ТВОЙ_НИК"
}
