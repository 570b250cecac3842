package auth

const (
	PermAddContract       = "add_contract"
	PermChangeContract    = "change_contract"
	PermDeleteContract    = "delete_contract"
	PermViewCustomer      = "view_customer"
	PermAddCustomer       = "add_customer"
	PermChangeCustomer    = "change_customer"
	PermDeleteCustomer    = "delete_customer"
	PermAddSubContract    = "add_subcontract"
	PermChangeSubContract = "change_subcontract"
	PermDeleteSubContract = "delete_subcontract"
	PermViewUser          = "view_user"
	PermAddUser           = "add_user"
	PermAddEvent          = "add_event"
	PermChangeEvent       = "change_event"
	PermDeleteEvent       = "delete_event"
)
