package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixScenario CachePrefix = "SCN_"
	CachePrefixDownload CachePrefix = "DLTOKEN_"
)

// Default generation parameters, matching the reference scenario size.
const (
	DefaultNumAirports     = 300
	DefaultNumAircraft     = 500
	DefaultLegsPerAircraft = 10
)

// Name of the Redis Stream carrying queued generation jobs.
const ScenarioStreamName = "scenario:generate"

// Consumer group used by the queue workers.
const ScenarioConsumerGroup = "scenario-workers"
