package models

// All lists every model handed to AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&PartnerRequest{},
		&Post{},
		&Comment{},
		&PostLike{},
		&Note{},
		&ChatMessage{},
		&RefreshToken{},
		&SystemLog{},
	}
}
