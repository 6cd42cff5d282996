package session

const recordKeyPrefix = "sessionToken-"

func recordKey(token string) string {
	return recordKeyPrefix + token
}

func indexKey(principalID string) string {
	return principalID
}
