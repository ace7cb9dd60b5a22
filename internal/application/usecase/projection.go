package usecase

func boolPtr(b bool) *bool { return &b }
