package edu

type ChatReq struct {
	Message string `json:"message" validate:"required,max=4000"`
	Context string `json:"context"`
}

type ChatResp struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

type Recommendation struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	EstimatedTime string `json:"estimatedTime"`
	CourseID      string `json:"courseId,omitempty"`
}

type GenerateQuizReq struct {
	Topic         string `json:"topic" validate:"required,max=200"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount" validate:"gte=0"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Points        int64    `json:"points"`
}

type GenerateQuizResp struct {
	Topic       string          `json:"topic"`
	Difficulty  string          `json:"difficulty"`
	Questions   []*QuizQuestion `json:"questions"`
	TotalPoints int64           `json:"totalPoints"`
}

type HealthResp struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}
