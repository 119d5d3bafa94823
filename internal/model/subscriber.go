package model

type Subscriber struct {
	ChatID int64 `db:"chat_id"`
}
