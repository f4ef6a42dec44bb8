package model

type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
