package api

import "github.com/go-chi/chi/v5"

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Lists      *ListHandler
	Invites    *InviteHandler
	Tasks      *TaskHandler
	PushTokens *PushTokenHandler
	Profile    *ProfileHandler
}

// RegisterRoutes mounts every authenticated route on r. Authentication and
// rate limiting are applied by the caller.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/lists", func(r chi.Router) {
		r.Get("/", h.Lists.ListLists)
		r.Post("/", h.Lists.CreateList)
		r.Post("/reorder", h.Lists.ReorderLists)

		r.Route("/{listID}", func(r chi.Router) {
			r.Get("/", h.Lists.GetList)
			r.Put("/", h.Lists.UpdateList)
			r.Delete("/", h.Lists.DeleteList)
			r.Get("/prefs", h.Lists.GetPrefs)
			r.Put("/prefs", h.Lists.UpdatePrefs)
			r.Get("/members", h.Lists.ListMembers)
			r.Post("/leave", h.Invites.LeaveList)
			r.Post("/invites", h.Invites.CreateInvite)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Tasks.ListTasks)
				r.Post("/", h.Tasks.CreateTask)
				r.Post("/clear", h.Tasks.ClearCompleted)
				r.Get("/{taskID}", h.Tasks.GetTask)
				r.Put("/{taskID}", h.Tasks.UpdateTask)
				r.Delete("/{taskID}", h.Tasks.DeleteTask)
				r.Post("/{taskID}/move", h.Tasks.MoveTask)
				r.Post("/{taskID}/reorder", h.Tasks.ReorderTask)
			})
		})
	})

	r.Get("/invites/{token}", h.Invites.PreviewInvite)
	r.Post("/invites/{token}/accept", h.Invites.AcceptInvite)

	r.Post("/push-tokens", h.PushTokens.Link)
	r.Post("/push-tokens/invalidate", h.PushTokens.Invalidate)

	r.Get("/profile", h.Profile.GetProfile)
}
