package api

type StatusRequest struct{}

type StatusResponse struct {
	SignupOpen bool
	UserName   string
}

type SignupRequest struct {
	Username string
	Password string
}

type SignupResponse struct {
	AccessToken string
}

type LoginRequest struct {
	Username string
	Password string
}

type LoginResponse struct {
	AccessToken string
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type ListAppsRequest struct{}

type ListAppsResponse struct {
	Apps []App
}

type OpenAppRequest struct {
	ID string
}

type OpenAppResponse struct {
	App App
}

// App is one catalog entry on the wire.
type App struct {
	ID           string
	DisplayName  string
	IconPath     string
	LaunchTarget string
}
