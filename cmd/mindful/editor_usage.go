package main

func shouldUseEditor(hasContent bool, editFlag bool, noEditFlag bool, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag {
		return false
	}
	if hasContent {
		return false
	}
	return interactive
}
