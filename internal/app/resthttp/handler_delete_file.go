package resthttp

import "net/http"

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		s.writeError(w, r, "delete", err)
		return
	}

	if err = s.FilesService.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
