package store

import "fmt"

// Generation markers. Readers and writers must agree on these or records
// written by one side become invisible to the other.
const (
	ContentNamespace  = "content_data_v3"
	UserNamespace     = "users_v3"
	SettingsKey       = "system_settings_v3"
	PresenceNamespace = "presence_v3"
)

// DeriveContentKey builds the storage key for one chapter's content bundle.
// For the two senior class levels the stream disambiguates the syllabus
// (Science/Commerce/Arts share chapter ids otherwise), so it is appended as
// a suffix; every other level omits it. Every read and write path must go
// through this function.
func DeriveContentKey(board, classLevel, stream, subject, chapterID string) string {
	streamKey := ""
	if (classLevel == "11" || classLevel == "12") && stream != "" {
		streamKey = "-" + stream
	}
	return fmt.Sprintf("%s_%s_%s%s_%s_%s", ContentNamespace, board, classLevel, streamKey, subject, chapterID)
}

// UserKey returns the fast-store mirror key for one user record.
func UserKey(userID uint) string {
	return fmt.Sprintf("%s:%d", UserNamespace, userID)
}

// PresenceKey returns the fast-store key holding one user's last-active
// timestamp. Presence is never dual-written.
func PresenceKey(userID uint) string {
	return fmt.Sprintf("%s:%d", PresenceNamespace, userID)
}
