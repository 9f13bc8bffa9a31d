package server

func (s *Server) registerRoutes() {
	s.App.Get("/healthz", s.liveness)
	s.App.Get("/readyz", s.readiness)

	v1 := s.App.Group("/api/v1")
	v1.Post("/messages", s.postMessage)
	v1.Post("/classify", s.postClassify)
	v1.Get("/users/:username/conversations", s.getUserConversations)
	v1.Get("/conversations/:id/messages", s.getConversationMessages)
	v1.Get("/resources", s.getResources)
	v1.Get("/strategies", s.getStrategies)
}
