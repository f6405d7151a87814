package internal

// TooltipSummary is the compact provenance shown next to a message
type TooltipSummary struct {
	Role                       string         `json:"role"`
	ID                         string         `json:"id"`
	ParentID                   string         `json:"parentId,omitempty"`
	ContentType                string         `json:"contentType"`
	CreatedTime                *float64       `json:"createdTime"`
	ModelSlug                  string         `json:"modelSlug,omitempty"`
	Status                     string         `json:"status,omitempty"`
	SelectedSources            []any          `json:"selected_sources,omitempty"`
	PromptExpansionPredictions []any          `json:"prompt_expansion_predictions,omitempty"`
	SafeURLs                   []any          `json:"safe_urls,omitempty"`
	IsUserSystemMessage        *bool          `json:"is_user_system_message,omitempty"`
	UserContextMessageData     map[string]any `json:"user_context_message_data,omitempty"`
}

// BuildTooltipSummary derives a tooltip summary from a normalized message
func BuildTooltipSummary(msg Message) TooltipSummary {
	meta := msg.Meta
	role := msg.Role
	if role == "" {
		role = roleUnknown
	}

	s := TooltipSummary{
		Role:                       role,
		ID:                         msg.ID,
		ParentID:                   meta.ParentID,
		ContentType:                meta.ContentType,
		CreatedTime:                meta.CreatedTime,
		Status:                     meta.Status,
		SelectedSources:            meta.SelectedSources,
		PromptExpansionPredictions: meta.PromptExpansionPredictions,
		SafeURLs:                   meta.SafeURLs,
		IsUserSystemMessage:        meta.IsUserSystemMessage,
		UserContextMessageData:     meta.UserContextMessageData,
	}
	if s.ID == "" {
		s.ID = meta.NodeID
	}
	if s.CreatedTime == nil {
		s.CreatedTime = msg.CreateTime
	}
	if role == roleAssistant {
		s.ModelSlug = meta.ModelSlug
	}
	return s
}
