package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyBHSDBType string = "BHS_DB_TYPE"
	EnvKeyBHSDbPath string = "BHS_DB_PATH"
	EnvKeyBHSDbDSN  string = "BHS_DB_DSN"

	EnvKeyBHSHttpHostPort string = "BHS_HTTP_HOST_PORT"

	EnvKeyBHSDefaultRate  string = "BHS_DEFAULT_RATE"
	EnvKeyBHSDefaultBurst string = "BHS_DEFAULT_BURST"

	EnvKeyBHSConfigPath string = "BHS_CONFIG_PATH"

	LoggerNameSimulator     string = "simulator"
	LoggerNameBroadcaster   string = "broadcaster"
	LoggerNameReconciler    string = "reconciler"
	LoggerNameMaintenance   string = "maintenance"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameStore         string = "store"

	LoggerFieldCategory        string = "category"
	LoggerCategoryTick         string = "tick"
	LoggerCategoryBulkTick     string = "bulk_tick"
	LoggerCategoryHistory      string = "history"
	LoggerCategoryRecommend    string = "recommendation"
	LoggerCategorySubscription string = "subscription"
	LoggerCategoryPublish      string = "publish"
	LoggerCategoryPoller       string = "poller"
	LoggerCategoryRetention    string = "retention"
	LoggerCategoryDegradation  string = "degradation"
)
