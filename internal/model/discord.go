package model

// User — автор сообщения или сам бот.
type User struct {
	ID         string
	Username   string
	GlobalName string
	Bot        bool
}

// Tag — имя для логов в духе username#discriminator.
func (u User) Tag() string {
	if u.GlobalName != "" {
		return u.Username + " (" + u.GlobalName + ")"
	}
	return u.Username
}

// Message — входящее сообщение из канала (MESSAGE_CREATE).
type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	Content   string
	Author    User
}
