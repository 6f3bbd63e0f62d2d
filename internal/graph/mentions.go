package graph

import (
	"strings"

	"trustrank/internal/core"
)

const mentionPunctuation = ",.!?;:"

func usernameIndex(directory []core.ChannelUserModel) map[string]int64 {
	index := make(map[string]int64, len(directory))
	for _, u := range directory {
		if u.Username != "" {
			index[u.Username] = u.UserID
		}
	}
	return index
}

// mentionTargets resolves @username tokens against the channel
// directory. Unknown names are ignored.
func mentionTargets(text string, usernames map[string]int64) []int64 {
	if text == "" {
		return nil
	}

	var ids []int64
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "@") || len(word) < 2 {
			continue
		}
		name := strings.Trim(word[1:], mentionPunctuation)
		if id, ok := usernames[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
