package domain

const (
	MsgItemNameRequired   = "name field is required"
	MsgUserFieldsRequired = "username and email fields are required"
	MsgSearchNameRequired = `query parameter "name" is required`
	MsgBulkArrayRequired  = "an array of items is required"
	MsgBulkNothingAdded   = "no items were added, check the format"
	MsgItemNotFound       = "item not found"
	MsgItemsCleared       = "items cleared"
	StatusOK              = "OK"
)
