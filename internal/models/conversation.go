package models

// ConversationState is the position of a conversation-mode entry in the
// user/ai turn loop.
type ConversationState string

const (
	StateEmpty         ConversationState = "empty"
	StateAwaitingReply ConversationState = "awaiting_reply"
	StateAwaitingUser  ConversationState = "awaiting_user"
)

// StateOf derives the state from the last stored turn. A nil entry is empty.
func StateOf(entry *JournalEntry) ConversationState {
	if entry == nil || len(entry.Conversation) == 0 {
		return StateEmpty
	}
	if entry.Conversation[len(entry.Conversation)-1].Role == RoleUser {
		return StateAwaitingReply
	}
	return StateAwaitingUser
}
