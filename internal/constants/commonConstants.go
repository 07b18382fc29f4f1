package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixCandidates CachePrefix = "CAND_"
	CachePrefixItinerary  CachePrefix = "ITIN_"
	CachePrefixShareToken CachePrefix = "SHARE_"
	CachePrefixDataStats  CachePrefix = "DATA_STATS"
)
