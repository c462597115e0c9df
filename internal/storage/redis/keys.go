package redis

import "fmt"

// Key prefix for all control-plane data
const keyPrefix = "frankenpanel"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id int64) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// usersSetKey returns the Redis key for the SET of all user IDs
func usersSetKey() string {
	return fmt.Sprintf("%s:users", keyPrefix)
}

// siteKey returns the Redis key for a Site
func siteKey(id int64) string {
	return fmt.Sprintf("%s:site:%d", keyPrefix, id)
}

// siteNameIndexKey returns the Redis key for the site name -> site_id index
func siteNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:site_name:%s", keyPrefix, name)
}

// sitesSetKey returns the Redis key for the SET of all site IDs
func sitesSetKey() string {
	return fmt.Sprintf("%s:sites", keyPrefix)
}

// databaseKey returns the Redis key for a Database
func databaseKey(id int64) string {
	return fmt.Sprintf("%s:database:%d", keyPrefix, id)
}

// databasesSetKey returns the Redis key for the SET of all database IDs
func databasesSetKey() string {
	return fmt.Sprintf("%s:databases", keyPrefix)
}

// domainKey returns the Redis key for a Domain
func domainKey(id int64) string {
	return fmt.Sprintf("%s:domain:%d", keyPrefix, id)
}

// domainNameIndexKey returns the Redis key for the domain name -> domain_id index
func domainNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:domain_name:%s", keyPrefix, name)
}

// domainsSetKey returns the Redis key for the SET of all domain IDs
func domainsSetKey() string {
	return fmt.Sprintf("%s:domains", keyPrefix)
}

// backupKey returns the Redis key for a Backup
func backupKey(id int64) string {
	return fmt.Sprintf("%s:backup:%d", keyPrefix, id)
}

// backupsSetKey returns the Redis key for the SET of all backup IDs
func backupsSetKey() string {
	return fmt.Sprintf("%s:backups", keyPrefix)
}

// auditListKey returns the Redis key for the audit log LIST
func auditListKey() string {
	return fmt.Sprintf("%s:audit", keyPrefix)
}

// sequenceKey returns the Redis key for a named ID sequence
func sequenceKey(name string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, name)
}
