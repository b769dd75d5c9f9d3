package handlers

import (
	"net/http"

	"github.com/petween/backend/internal/schemas"
	"github.com/petween/backend/pkg/logger"
)

// HandleAddFriend makes two users friends. The friend is taken from the
// {friend_id} route variable, the JSON body or the friend_id query
// parameter, in that order.
func (h *HandlerManager) HandleAddFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.friendRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.FriendRepo.AddFriendship(r.Context(), userID, req.FriendID); err != nil {
		writeError(w, r, err)
		return
	}

	friend, err := h.UserRepo.GetUserByID(r.Context(), req.FriendID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("Friendship added", "user_id", userID, "friend_id", req.FriendID)
	writeJSON(w, http.StatusOK, schemas.NewUserOut(*friend))
}

func (h *HandlerManager) friendRequest(w http.ResponseWriter, r *http.Request) (*schemas.AddFriendRequest, error) {
	var req schemas.AddFriendRequest

	if _, ok := routeVar(r, "friend_id"); ok {
		id, err := pathID(r, "friend_id")
		if err != nil {
			return nil, err
		}
		req.FriendID = id
	} else {
		if err := decodeJSON(w, r, &req, true); err != nil {
			return nil, err
		}
		if raw := r.URL.Query().Get("friend_id"); req.FriendID == 0 && raw != "" {
			id, err := parseID(raw, "friend_id")
			if err != nil {
				return nil, err
			}
			req.FriendID = id
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleListFriends returns a user's friends.
func (h *HandlerManager) HandleListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	friends, err := h.FriendRepo.GetFriends(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewUserList(friends))
}
