package rbac

// Simple default policy. Students (anonymous sessions included) can take
// quizzes; staff additionally manage the question bank and reset stats.
var RolePermissions = map[string][]string{
	"student": {
		"practice:answer",
		"exam:take",
		"listen:navigate",
		"tts:play",
	},
	"staff": {
		"*",
	},
}
