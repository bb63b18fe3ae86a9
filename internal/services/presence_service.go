package services

import (
	"sort"
	"strings"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"
)

// OnlineWindow is how recently a user must have been active to count as
// online.
const OnlineWindow = 5 * time.Minute

// TouchPresence records the user's last-active timestamp in the fast store
// only. Liveness is ephemeral and reconstructible, so it is never
// dual-written.
func TouchPresence(userID uint) error {
	if database.RedisClient == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return database.RedisClient.Set(database.Ctx, store.PresenceKey(userID), now, 0).Err()
}

// IsOnline derives the online flag from a last-active timestamp.
func IsOnline(lastActive *time.Time, now time.Time) bool {
	if lastActive == nil {
		return false
	}
	return now.Sub(*lastActive) < OnlineWindow
}

// OnlineUser is one row of the admin monitoring view.
type OnlineUser struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Board          string     `json:"board"`
	ClassLevel     string     `json:"classLevel"`
	Online         bool       `json:"online"`
	LastActiveTime *time.Time `json:"lastActiveTime,omitempty"`
}

// OnlineUsersResult is the derived read-side presence view: every user
// annotated with an online flag, most recently active first, with an
// overall online count.
type OnlineUsersResult struct {
	Users       []OnlineUser `json:"users"`
	OnlineCount int          `json:"onlineCount"`
}

// OnlineUsers aggregates presence over all user records, optionally
// filtered by a case-insensitive substring of name or email.
func OnlineUsers(filter string) (*OnlineUsersResult, error) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	filter = strings.ToLower(filter)
	fast := fastPresence(users)

	result := &OnlineUsersResult{Users: []OnlineUser{}}
	for i := range users {
		u := &users[i]
		lastActive := fast[u.ID]
		if lastActive == nil {
			lastActive = u.LastActiveTime
		}
		online := IsOnline(lastActive, now)
		if online {
			result.OnlineCount++
		}

		if filter != "" &&
			!strings.Contains(strings.ToLower(u.Name), filter) &&
			!strings.Contains(strings.ToLower(u.Email), filter) {
			continue
		}

		result.Users = append(result.Users, OnlineUser{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Board:          u.Board,
			ClassLevel:     u.ClassLevel,
			Online:         online,
			LastActiveTime: lastActive,
		})
	}

	sort.SliceStable(result.Users, func(i, j int) bool {
		ti, tj := result.Users[i].LastActiveTime, result.Users[j].LastActiveTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	return result, nil
}

// fastPresence fetches every user's fast-store timestamp in one MGET.
// Users with no fast-store entry are simply absent from the map.
func fastPresence(users []models.User) map[uint]*time.Time {
	out := make(map[uint]*time.Time, len(users))
	if database.RedisClient == nil || len(users) == 0 {
		return out
	}

	keys := make([]string, len(users))
	for i := range users {
		keys[i] = store.PresenceKey(users[i].ID)
	}

	vals, err := database.RedisClient.MGet(database.Ctx, keys...).Result()
	if err != nil {
		return out
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, perr := time.Parse(time.RFC3339, s); perr == nil {
			out[users[i].ID] = &t
		}
	}
	return out
}
