package override

import (
	"fmt"

	"github.com/kbukum/bundlegen/validation"
)

// DefaultLogConfigEnv is the environment variable job clusters must set so
// task logs can be routed.
const DefaultLogConfigEnv = "LOGGING_CONFIG"

// ValidateClusterDefaults checks the job clusters declared under the default
// selector before anything is merged: each one with a literal new_cluster
// must set envVar in new_cluster.spark_env_vars.
func ValidateClusterDefaults(sel Selectors, defaultKey, envVar string) error {
	defaults, ok := sel.Get(defaultKey)
	if !ok {
		return nil
	}
	clusters, _ := asList(defaults[KeyJobClusters])

	v := validation.New()
	for i, item := range clusters {
		cluster, ok := asMap(item)
		if !ok {
			continue
		}
		newCluster, ok := asMap(cluster[KeyNewCluster])
		if !ok {
			continue
		}
		key, ok := stringValue(cluster[KeyJobClusterKey])
		if !ok {
			key = fmt.Sprintf("#%d", i)
		}
		env, _ := asMap(newCluster[KeySparkEnvVars])
		v.RequiredKey(
			fmt.Sprintf("%s.%s[%s].%s.%s.%s", defaultKey, KeyJobClusters, key, KeyNewCluster, KeySparkEnvVars, envVar),
			env, envVar)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
