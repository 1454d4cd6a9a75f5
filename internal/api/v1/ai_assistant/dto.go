package ai_assistant

type EnhanceRequest struct {
	Text        string `json:"text" binding:"required"`
	TargetModel string `json:"target_model" binding:"max=100"`
	Style       string `json:"style" binding:"omitempty,oneof=BASIC DETAIL basic detail"`
}

type FrameworkRequest struct {
	Text      string `json:"text" binding:"required"`
	Framework string `json:"framework" binding:"required"`
}

type EnhanceResponse struct {
	Text string `json:"text"`
}
