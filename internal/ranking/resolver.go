package ranking

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"trustrank/internal/core"
)

// Resolver maps user ids to display labels. Precedence: username, then
// "first last", then the numeric id. RawIDs bypasses resolution
// entirely.
type Resolver struct {
	RawIDs bool

	names map[int64]string
}

func NewResolver(directory []core.ChannelUserModel, rawIDs bool) *Resolver {
	return &Resolver{
		RawIDs: rawIDs,
		names: lo.SliceToMap(directory, func(u core.ChannelUserModel) (int64, string) {
			return u.UserID, DisplayName(u)
		}),
	}
}

func (r *Resolver) Label(userID int64) string {
	if r.RawIDs {
		return strconv.FormatInt(userID, 10)
	}
	if name, ok := r.names[userID]; ok {
		return name
	}
	return strconv.FormatInt(userID, 10)
}

func DisplayName(u core.ChannelUserModel) string {
	if u.Username != "" {
		return u.Username
	}

	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}

	return strconv.FormatInt(u.UserID, 10)
}

// Rank attaches labels to normalized scores, preserving their order.
func Rank(scores []Normalized, resolver *Resolver) []core.RankEntry {
	return lo.Map(scores, func(s Normalized, _ int) core.RankEntry {
		return core.RankEntry{Label: resolver.Label(s.UserID), Value: s.Value}
	})
}

// ExcludeAdmins drops admins from an aggregated score set, for rankings
// that should cover regular members only.
func ExcludeAdmins(scores []core.RawScore, directory []core.ChannelUserModel) []core.RawScore {
	admins := map[int64]bool{}
	for _, u := range directory {
		if u.IsAdmin {
			admins[u.UserID] = true
		}
	}

	return lo.Reject(scores, func(s core.RawScore, _ int) bool {
		return admins[s.UserID]
	})
}
