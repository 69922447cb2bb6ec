package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dine-insights/logging"
	"dine-insights/models"
	"dine-insights/narrative"
	"dine-insights/voice"

	"github.com/sirupsen/logrus"
)

// voiceResponse 语音分析接口的成功响应
type voiceResponse struct {
	Success        bool                `json:"success"`
	Result         *models.VoiceResult `json:"result"`
	ProcessingTime int64               `json:"processingTime"` // 毫秒
}

// HandleVoiceAnalysis 语音/会议分析接口。
// transcription/separation 为纯确定性路径；analysis/meeting_notes 额外经过叙事分析器
func HandleVoiceAnalysis(analyzer narrative.Analyzer, builder narrative.MeetingPromptBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeAIError(w, http.StatusMethodNotAllowed, "只支持 POST 请求")
			return
		}

		start := time.Now()

		var req models.VoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAIError(w, http.StatusBadRequest, "请求体解析错误: "+err.Error())
			return
		}

		switch req.AnalysisType {
		case models.VoiceTranscription, models.VoiceSeparation, models.VoiceAnalysis, models.VoiceMeetingNotes:
		default:
			writeAIError(w, http.StatusBadRequest, "未知的分析类型: "+req.AnalysisType)
			return
		}

		audio, err := voice.DecodeAudio(req.AudioData)
		if err != nil {
			writeAIError(w, http.StatusBadRequest, err.Error())
			return
		}

		segments := voice.Separate(voice.Transcribe(audio), req.Participants)

		narrativeText := ""
		if req.AnalysisType == models.VoiceAnalysis || req.AnalysisType == models.VoiceMeetingNotes {
			prompt := builder.BuildTranscript(segments, req.Context)
			narrativeText, err = analyzer.Analyze(r.Context(), prompt)
			if err != nil {
				logging.Error("叙事分析器调用失败", logrus.Fields{"error": err})
				writeAIError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		result := voice.BuildResult(&req, segments, narrativeText, time.Now())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(voiceResponse{
			Success:        true,
			Result:         result,
			ProcessingTime: time.Since(start).Milliseconds(),
		})
	}
}
