package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxPayToken is used for prefixing cached payment medium lookups
	PfxPayToken = "paytoken"
	// PfxHttpCache is used for prefixing cached http responses
	PfxHttpCache = "httpCache"
	// ChannelActivities is the pub/sub channel carrying published activity histories
	ChannelActivities = "settlement:activities"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the first one or two components of a key for metric tags
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
