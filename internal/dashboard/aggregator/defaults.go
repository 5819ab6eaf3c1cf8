package aggregator

const (
	dashboardDays      = 30
	rollingWorkerCount = 3

	operationProcessNewBlock = "process_new_block"
	operationProcessRange    = "process_range"
	operationHandleReorg     = "handle_reorg"
	operationRebuildCache    = "rebuild_cache"
	operationDashboardData   = "dashboard_data"
)
