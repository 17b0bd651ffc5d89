package store

import (
	"github.com/jackc/pgx/v5"
)

// scanMaps 將動態投影的查詢結果轉為 map 列表
// 查詢建構器的欄位集合依請求而異，無法用固定結構掃描
func scanMaps(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []map[string]any{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, len(vals))
		for i, f := range fields {
			m[f.Name] = vals[i]
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
