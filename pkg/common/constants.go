package common

const (
	DefaultWorksheet = "LS日経診断"

	DefaultDateColumn     = "日付"
	DefaultScoreColumn    = "スコア"
	DefaultLabelColumn    = "label"
	DefaultJudgmentColumn = "判定"

	// JudgmentPlaceholder is shown when the sheet has no stored judgment for a row.
	JudgmentPlaceholder = "—"

	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"

	RedisKeyScoreRecords = "dashboard.score_records"

	DateLayout = "2006-01-02"
)
