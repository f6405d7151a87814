package internal

import (
	"github.com/rs/zerolog/log"
)

// DefaultMaxWalkSteps bounds the active-path walk against cycles and malformed trees
const DefaultMaxWalkSteps = 10000

// WalkToRoot follows parent links from startID and returns the visited node ids
// root first. The walk stops at a node missing from mapping or at a node without
// a parent. truncated reports that maxSteps was hit before either happened.
// mapping is never modified.
func WalkToRoot(mapping map[string]*RawNode, startID string, maxSteps int) (ids []string, truncated bool) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxWalkSteps
	}

	nodeID := startID
	for nodeID != "" {
		node, ok := mapping[nodeID]
		if !ok || node == nil {
			break
		}
		if len(ids) >= maxSteps {
			truncated = true
			break
		}
		ids = append(ids, nodeID)
		if node.Parent == nil {
			break
		}
		nodeID = *node.Parent
	}

	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, truncated
}

// activePath resolves the live root-to-leaf chain of a conversation
func (n *Normalizer) activePath(raw *RawConversation) []string {
	current := raw.CurrentNode.String()
	if raw.Mapping == nil || current == "" {
		return nil
	}
	if node, ok := raw.Mapping[current]; !ok || node == nil {
		log.Debug().
			Str("conversation", raw.ConversationID.String()).
			Str("current_node", current).
			Msg("current node missing from mapping")
		return nil
	}

	ids, truncated := WalkToRoot(raw.Mapping, current, n.maxSteps)
	if truncated {
		walksTruncated.Inc()
		log.Debug().
			Str("conversation", raw.ConversationID.String()).
			Int("steps", len(ids)).
			Msg("active path walk truncated")
	}
	return ids
}

// isHidden reports scaffolding that the export marks invisible, for any role
func isHidden(msg *RawMessage) bool {
	if msg == nil || msg.Metadata == nil {
		return false
	}
	hidden, ok := msg.Metadata["is_visually_hidden_from_conversation"].(bool)
	return ok && hidden
}
