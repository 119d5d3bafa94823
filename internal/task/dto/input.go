package dto

import "github.com/fekuna/omnipos-stockbot/internal/model"

type AddTaskInput struct {
	Process model.Process
	Text    string
}

type EditTaskInput struct {
	ID   int64
	Text string
}
