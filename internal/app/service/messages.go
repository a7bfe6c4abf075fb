package service

// Textos que el engine le devuelve al usuario. El transporte los manda tal
// cual (parse_mode HTML).
const (
	msgAlreadyQueued = "Ты уже в очереди ✅\nЖдём отклики. Как только кто-то ответит — я пришлю список."
	msgQueued        = "Поставил тебя в очередь на кооп ✅\nКак только кто-то откликнется, дам знать."
	msgNotInQueue    = "Ты сейчас не в очереди 🙂"
	msgLeftQueue     = "Снял тебя с очереди ✅"
	msgNoOpenReqs    = "Сейчас нет активных запросов 😕\nМожешь зайти чуть позже."
	msgRequestGone   = "Этот запрос уже недоступен."
	msgRequestClosed = "Этот запрос уже закрыт."
	msgSelfResponse  = "На свой запрос отвечать нельзя 🙂"
	msgCooldown      = "10 минут после прошлого отклика ещё не прошли. Попробуй позже."
	msgResponseSent  = "Отклик отправлен ✅\nЖдём, выберет ли тебя игрок."
	msgNotYourReq    = "Это не твой запрос 🙂"
	msgResponderGone = "Этот отклик уже недоступен. Выбери другого."
	msgPickResponder = "На твой запрос есть отклики 🎯\nВыбери, с кем идёшь в кооп:"
	msgPickRequest   = "Выбери, на чей запрос откликнуться:"

	msgConnectFailed = "Не получилось законнектиться 😕\nПохоже, игрок выбрал другого. Попробуй ещё раз — сейчас точно найдёмся!"
	msgQueueClosed   = "Запрос закрылся. Не получилось законнектиться 😕"
)

func msgMatchFoundRequester(responderLabel string) string {
	return "Супер ✅ Матч найден!\nТвой напарник: " + responderLabel + "\nУдачной катки 🎮"
}

func msgMatchFoundResponder(requesterLabel string) string {
	return "Есть коннект ✅\nТы идёшь в кооп с: " + requesterLabel + "\nУдачной катки 🎮"
}
