package domain

import "strings"

// Tokens de callback_data. Los compuestos llevan argumentos separados por "|".
const (
	CBRequestCoop   = "REQ_COOP"
	CBRespondCoop   = "RESP_COOP"
	CBExitQueue     = "EXIT_QUEUE"
	CBMyStats       = "MY_STATS"
	CBPickRequest   = "PICK_REQ"  // PICK_REQ|request_id
	CBPickResponder = "PICK_RESP" // PICK_RESP|request_id|responder_id
	CBSetNick       = "SET_NICK"
	CBChangeNick    = "CHANGE_NICK"
	CBCancel        = "CANCEL"
)

func PickRequestToken(requestID string) string {
	return CBPickRequest + "|" + requestID
}

func PickResponderToken(requestID, responderID string) string {
	return CBPickResponder + "|" + requestID + "|" + responderID
}

// SplitToken separa acción y argumentos de un callback_data.
func SplitToken(data string) (action string, args []string) {
	parts := strings.Split(data, "|")
	return parts[0], parts[1:]
}
