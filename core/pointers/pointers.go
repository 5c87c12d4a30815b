package pointers

// SafeString returns the value from ptr or "" if the pointer is nil
func SafeString(ptr *string) string {
	if ptr != nil {
		return *ptr
	}
	return ""
}

// StringPtr returns a pointer to the string passed as parameter
func StringPtr(str string) *string {
	return &str
}

// Int32Ptr returns a pointer to the int32 passed as parameter
func Int32Ptr(i int32) *int32 {
	return &i
}
