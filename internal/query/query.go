// File: internal/query/query.go
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// 查詢字串中的控制鍵，不會被當成過濾欄位
var reserved = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// 比較運算子後綴對應到 SQL 運算子
var comparisons = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Builder 將扁平的查詢字串參數轉譯為參數化的 SELECT
// 各方法可鏈式呼叫，最後以 Build 產出 SQL 與參數
type Builder struct {
	table      string
	columns    []string
	selectable map[string]struct{}
	hidden     map[string]struct{}
	params     url.Values
	conds      []string
	args       []any
	order      []string
	project    []string
	paginated  bool
	limit      int
	offset     int
}

// New 建立查詢建構器
// columns 為該資源可引用的完整欄位清單，hidden 為預設投影排除的欄位
// 清單之外的欄位名一律忽略，敏感欄位不列入即無法被投影、過濾或排序
func New(table string, columns, hidden []string, params url.Values) *Builder {
	s := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		s[col] = struct{}{}
	}
	h := make(map[string]struct{}, len(hidden))
	for _, col := range hidden {
		h[col] = struct{}{}
	}
	return &Builder{table: table, columns: columns, selectable: s, hidden: h, params: params}
}

// Where 附加固定述詞（例如軟刪除過濾），在 Filter 之前呼叫以維持順序
func (b *Builder) Where(cond string) *Builder {
	b.conds = append(b.conds, cond)
	return b
}

// Filter 將剩餘參數轉為 AND 結合的比較述詞
// field[gte]=v 這類鍵改寫為對應的 SQL 比較，其餘為等值比較
// 不在欄位清單內的欄位一律忽略
func (b *Builder) Filter() *Builder {
	keys := make([]string, 0, len(b.params))
	for key := range b.params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := reserved[key]; ok {
			continue
		}
		vals := b.params[key]
		if len(vals) == 0 {
			continue
		}

		field, op := key, "="
		if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
			cmp, ok := comparisons[key[i+1:len(key)-1]]
			if !ok {
				continue
			}
			field, op = key[:i], cmp
		}
		if !identPattern.MatchString(field) {
			continue
		}
		if _, ok := b.selectable[field]; !ok {
			continue
		}

		b.args = append(b.args, vals[0])
		b.conds = append(b.conds, fmt.Sprintf("%s %s $%d", quoteIdent(field), op, len(b.args)))
	}
	return b
}

// Sort 依 sort 參數排序，前綴 - 表示遞減
// 未指定時以建立時間遞減，確保分頁結果穩定
func (b *Builder) Sort() *Builder {
	raw := b.params.Get("sort")
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		dir := "ASC"
		if strings.HasPrefix(part, "-") {
			dir = "DESC"
			part = part[1:]
		}
		if !identPattern.MatchString(part) {
			continue
		}
		if _, ok := b.selectable[part]; !ok {
			continue
		}
		b.order = append(b.order, quoteIdent(part)+" "+dir)
	}
	if len(b.order) == 0 {
		b.order = []string{`"created_at" DESC`}
	}
	return b
}

// Select 依 fields 參數限制投影，永遠包含 id
// 僅接受欄位清單內的名稱，未指定時回傳所有欄位，但排除內部維護欄位
func (b *Builder) Select() *Builder {
	raw := b.params.Get("fields")
	if raw == "" {
		for _, col := range b.columns {
			if _, ok := b.hidden[col]; ok {
				continue
			}
			b.project = append(b.project, quoteIdent(col))
		}
		return b
	}

	b.project = []string{`"id"`}
	seen := map[string]struct{}{"id": {}}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if !identPattern.MatchString(part) {
			continue
		}
		if _, ok := b.selectable[part]; !ok {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		b.project = append(b.project, quoteIdent(part))
	}
	return b
}

// Paginate 解析 page 與 limit，計算 OFFSET
// 格式錯誤或非正數時退回預設值，limit 有上限
func (b *Builder) Paginate() *Builder {
	page := positiveInt(b.params.Get("page"), 1)
	limit := positiveInt(b.params.Get("limit"), DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	b.paginated = true
	b.limit = limit
	b.offset = (page - 1) * limit
	return b
}

// Build 產出最終 SQL 與對應參數
func (b *Builder) Build() (string, []any) {
	cols := b.project
	if len(cols) == 0 {
		for _, col := range b.columns {
			if _, ok := b.hidden[col]; ok {
				continue
			}
			cols = append(cols, quoteIdent(col))
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(b.table))
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if len(b.order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.order, ", "))
	}
	if b.paginated {
		sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", b.limit, b.offset))
	}
	return sb.String(), b.args
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
