package profile

// Profile is the user-editable display record for a user, stored separately
// from the identity record but keyed by the same id. It is created lazily on
// first update, so both fields are optional.
type Profile struct {
	ID        string  `db:"id" json:"id"`
	Username  *string `db:"username" json:"username"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
}

// Update carries a partial mutation: nil fields keep their stored value.
type Update struct {
	Username  *string
	AvatarURL *string
}

// CacheKeyByUsername is the cache slot mapping a username to its profile id.
// The chat directory reads it; profile upserts invalidate it.
func CacheKeyByUsername(username string) string {
	return "profile:username:" + username
}
