package dto

type UserRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   uint   `json:"roleId"`
}

type StartMaintenanceRequest struct {
	EndTime string `json:"endTime"`
}
