// 语音/会议分析：转写、说话人切分与说话人级统计。
// 转写目前是确定性占位实现，接入真实 ASR 时整体替换 Transcribe
package voice

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"dine-insights/models"
)

const maxAudioBytes = 20 << 20 // 20MB

// ValidationError 请求字段校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// 占位转写文本，按音频哈希确定性选取
var placeholderLines = []string{
	"Let's review last week's customer feedback numbers before we open.",
	"Kitchen ticket times were over target on Friday and Saturday night.",
	"I will follow up with the produce supplier about the delivery delays.",
	"We agreed to trial the new weekend brunch menu starting next month.",
	"Should we add another server for the dinner rush on weekends?",
	"The new point-of-sale system training needs to finish by Friday.",
	"Guest complaints about noise levels in the main dining room are up.",
	"We need to schedule the deep clean for the walk-in freezer.",
	"Online review scores improved after the service training last quarter.",
	"I'll prepare the staffing plan for the holiday season by next week.",
}

// DecodeAudio 校验并解码 base64 音频
func DecodeAudio(audioData string) ([]byte, error) {
	if audioData == "" {
		return nil, &ValidationError{Field: "audioData", Message: "audioData is required"}
	}
	raw, err := base64.StdEncoding.DecodeString(audioData)
	if err != nil {
		return nil, &ValidationError{Field: "audioData", Message: "audioData is not valid base64"}
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Field: "audioData", Message: "audio payload is empty"}
	}
	if len(raw) > maxAudioBytes {
		return nil, &ValidationError{Field: "audioData", Message: "audio payload exceeds 20MB limit"}
	}
	return raw, nil
}

// Transcribe 确定性占位转写：段数和文本由音频内容哈希决定
func Transcribe(audio []byte) []models.TranscriptionSegment {
	h := fnv.New32a()
	h.Write(audio)
	seed := int(h.Sum32())

	count := 4 + seed%5 // 4..8 段
	segments := make([]models.TranscriptionSegment, 0, count)
	cursor := 0.0
	for i := 0; i < count; i++ {
		text := placeholderLines[(seed+i)%len(placeholderLines)]
		duration := 4.0 + float64(len(text))/12.0
		segments = append(segments, models.TranscriptionSegment{
			Text:       text,
			StartTime:  round1(cursor),
			EndTime:    round1(cursor + duration),
			Confidence: 0.92,
		})
		cursor += duration + 0.8
	}
	return segments
}

// Separate 将段落轮转分配给参与者；未声明参与者时合成两个说话人
func Separate(segments []models.TranscriptionSegment, participants []models.Participant) []models.TranscriptionSegment {
	if len(participants) == 0 {
		participants = []models.Participant{
			{ID: "speaker_1", Name: "Speaker 1"},
			{ID: "speaker_2", Name: "Speaker 2"},
		}
	}
	out := make([]models.TranscriptionSegment, len(segments))
	for i, seg := range segments {
		p := participants[i%len(participants)]
		seg.SpeakerID = p.ID
		seg.SpeakerName = p.Name
		out[i] = seg
	}
	return out
}

// 情绪关键词表
var emotionKeywords = map[string][]string{
	"positive":   {"improved", "great", "good", "agreed", "glad", "well"},
	"concerned":  {"complaints", "over target", "delays", "up", "issue", "problem"},
	"frustrated": {"again", "still", "late", "missed", "failed"},
}

// AnalyzeSpeakers 聚合每个说话人的发言时长、段数、词数、情绪与话题
func AnalyzeSpeakers(segments []models.TranscriptionSegment) []models.SpeakerAnalysis {
	type agg struct {
		name     string
		time     float64
		segments int
		words    int
		texts    []string
	}
	byID := make(map[string]*agg)
	var order []string
	total := 0.0
	for _, seg := range segments {
		a, ok := byID[seg.SpeakerID]
		if !ok {
			a = &agg{name: seg.SpeakerName}
			byID[seg.SpeakerID] = a
			order = append(order, seg.SpeakerID)
		}
		a.time += seg.EndTime - seg.StartTime
		a.segments++
		a.words += len(strings.Fields(seg.Text))
		a.texts = append(a.texts, seg.Text)
		total += seg.EndTime - seg.StartTime
	}

	analyses := make([]models.SpeakerAnalysis, 0, len(order))
	for _, id := range order {
		a := byID[id]
		engagement := 0
		if total > 0 {
			engagement = int(a.time / total * 100)
		}
		analyses = append(analyses, models.SpeakerAnalysis{
			SpeakerID:     id,
			SpeakerName:   a.name,
			SpeakingTime:  round1(a.time),
			SegmentCount:  a.segments,
			WordCount:     a.words,
			Emotions:      tagEmotions(a.texts),
			KeyTopics:     ExtractTopics(a.texts, 3),
			EngagementPct: engagement,
		})
	}
	return analyses
}

func tagEmotions(texts []string) []string {
	joined := strings.ToLower(strings.Join(texts, " "))
	var tags []string
	for _, emotion := range []string{"positive", "concerned", "frustrated"} {
		for _, kw := range emotionKeywords[emotion] {
			if strings.Contains(joined, kw) {
				tags = append(tags, emotion)
				break
			}
		}
	}
	if len(tags) == 0 {
		tags = []string{"neutral"}
	}
	return tags
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "to": true,
	"of": true, "in": true, "on": true, "for": true, "is": true, "are": true,
	"was": true, "were": true, "we": true, "i": true, "it": true, "that": true,
	"this": true, "with": true, "by": true, "be": true, "at": true, "our": true,
	"will": true, "should": true, "need": true, "needs": true, "about": true,
	"before": true, "after": true, "up": true, "lets": true, "let's": true,
}

// ExtractTopics 词频提取话题，去停用词，频次相同按字典序保证确定性
func ExtractTopics(texts []string, limit int) []string {
	freq := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?;:'\"")
			if len(word) < 4 || stopwords[word] {
				continue
			}
			freq[word]++
		}
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
