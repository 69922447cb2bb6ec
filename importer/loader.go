// 反馈批量导入：从 xlsx 表格读取反馈行
// 表头约定：source | content | rating | date | platform
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dine-insights/models"
	"dine-insights/sentiment"

	"github.com/xuri/excelize/v2"
)

// LoadFeedback 读取第一个工作表，首行为表头，返回可入库的反馈行
func LoadFeedback(r io.Reader, shopID int) ([]models.StoredFeedback, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("无法读取表格文件: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("表格中没有工作表")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("表格中没有数据行")
	}

	// 按表头定位列
	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"source", "content"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("表头缺少必需列 %q", required)
		}
	}

	var list []models.StoredFeedback
	for i, row := range rows[1:] {
		source := cell(row, cols, "source")
		content := cell(row, cols, "content")
		if content == "" {
			continue // 跳过空行
		}
		if !models.ValidSources[source] {
			return nil, fmt.Errorf("第 %d 行来源非法: %q", i+2, source)
		}

		fb := models.StoredFeedback{
			ShopID:   shopID,
			Source:   source,
			Content:  content,
			Platform: cell(row, cols, "platform"),
		}
		if raw := cell(row, cols, "rating"); raw != "" {
			rating, err := strconv.ParseFloat(raw, 64)
			if err != nil || rating < 1 || rating > 5 {
				return nil, fmt.Errorf("第 %d 行评分非法: %q", i+2, raw)
			}
			fb.Rating = &rating
		}
		// 历史反馈带原始日期，缺省时落库用当前时间
		if raw := cell(row, cols, "date"); raw != "" {
			parsed, err := sentiment.ParseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行日期非法: %q", i+2, raw)
			}
			fb.CreatedAt = parsed
		}
		list = append(list, fb)
	}
	return list, nil
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
