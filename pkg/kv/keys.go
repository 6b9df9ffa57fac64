package kv

// Record names shared by every service.
const (
	KeyUsers    = "creatiTubeUsers"
	KeyVideos   = "creatiTubeVideos"
	KeyImages   = "creatiTubeImages"
	KeyShorts   = "creatiTubeShorts"
	KeyProducts = "creatiTubeProducts"
	KeyOrders   = "creatiTubeOrders"
	KeyTheme    = "creatiTubeTheme"
)

func SessionKey(id string) string {
	return "creatiTubeSession:" + id
}

func NotificationsKey(email string) string {
	return "creatiTubeNotifications:" + email
}
