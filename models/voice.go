package models

// 语音分析类型枚举
const (
	VoiceTranscription = "transcription"
	VoiceSeparation    = "separation"
	VoiceAnalysis      = "analysis"
	VoiceMeetingNotes  = "meeting_notes"
)

// Participant 会议参与者
type Participant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VoiceProfile string `json:"voiceProfile,omitempty"`
	Role         string `json:"role,omitempty"`
}

// VoiceRequest 语音/会议分析接口的请求体
type VoiceRequest struct {
	AudioData    string        `json:"audioData"` // base64
	Participants []Participant `json:"participants,omitempty"`
	AnalysisType string        `json:"analysisType"`
	Language     string        `json:"language,omitempty"`
	Context      string        `json:"context,omitempty"`
}

// TranscriptionSegment 一段按说话人切分的转写文本
type TranscriptionSegment struct {
	SpeakerID   string  `json:"speakerId"`
	SpeakerName string  `json:"speakerName"`
	Text        string  `json:"text"`
	StartTime   float64 `json:"startTime"` // 秒
	EndTime     float64 `json:"endTime"`
	Confidence  float64 `json:"confidence"`
}

// SpeakerAnalysis 说话人级别统计
type SpeakerAnalysis struct {
	SpeakerID     string   `json:"speakerId"`
	SpeakerName   string   `json:"speakerName"`
	SpeakingTime  float64  `json:"speakingTime"` // 秒
	SegmentCount  int      `json:"segmentCount"`
	WordCount     int      `json:"wordCount"`
	Emotions      []string `json:"emotions"`
	KeyTopics     []string `json:"keyTopics"`
	EngagementPct int      `json:"engagementPct"` // 发言时间占比 0..100
}

// MeetingInsights 会议洞察
type MeetingInsights struct {
	Topics        []string `json:"topics"`
	Decisions     []string `json:"decisions"`
	OpenQuestions []string `json:"openQuestions"`
	OverallTone   string   `json:"overallTone"` // positive/neutral/negative
}

// VoiceResult 语音分析结果
type VoiceResult struct {
	Transcription   []TranscriptionSegment `json:"transcription"`
	SpeakerAnalysis []SpeakerAnalysis      `json:"speakerAnalysis"`
	MeetingInsights *MeetingInsights       `json:"meetingInsights,omitempty"`
	ActionItems     []ActionItem           `json:"actionItems,omitempty"`
	Summary         string                 `json:"summary,omitempty"`
	Confidence      int                    `json:"confidence"`
}
