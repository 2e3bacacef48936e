package service

import (
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
)

// SaveFavorite promotes a logged entry into the meal bank. The newest
// template goes first and the bank keeps at most model.MaxFavorites.
func SaveFavorite(st model.State, food model.FoodEntry, id string, now time.Time) (model.State, model.FavoriteMeal) {
	fav := model.FavoriteMeal{
		ID:         id,
		Name:       food.Name,
		Amount:     food.Amount,
		AmountUnit: food.AmountUnit,
		AmountText: food.AmountText,
		Kcal:       food.Kcal,
		ProteinG:   finiteOrZero(food.ProteinG),
		CarbsG:     finiteOrZero(food.CarbsG),
		FatG:       finiteOrZero(food.FatG),
		FiberG:     finiteOrZero(food.FiberG),
		CreatedTs:  now.UnixMilli(),
	}
	favs := make([]model.FavoriteMeal, 0, len(st.User.Favorites)+1)
	favs = append(favs, fav)
	favs = append(favs, st.User.Favorites...)
	if len(favs) > model.MaxFavorites {
		favs = favs[:model.MaxFavorites]
	}
	st.User.Favorites = favs
	return st, fav
}

func FindFavorite(st model.State, id string) (model.FavoriteMeal, error) {
	for _, f := range st.User.Favorites {
		if f.ID == id {
			return f, nil
		}
	}
	return model.FavoriteMeal{}, notFoundf("favorite %q", id)
}

// AddFavoriteToDay logs a copy of the template on iso with source "favorite".
func AddFavoriteToDay(st model.State, iso, favID, entryID string, now time.Time) (model.State, model.FoodEntry, error) {
	if err := ValidateDateISO(iso); err != nil {
		return st, model.FoodEntry{}, err
	}
	fav, err := FindFavorite(st, favID)
	if err != nil {
		return st, model.FoodEntry{}, err
	}
	entry := model.FoodEntry{
		ID:         entryID,
		Ts:         now.UnixMilli(),
		Name:       fav.Name,
		Amount:     fav.Amount,
		AmountUnit: fav.AmountUnit,
		AmountText: fav.AmountText,
		Kcal:       fav.Kcal,
		ProteinG:   fav.ProteinG,
		CarbsG:     fav.CarbsG,
		FatG:       fav.FatG,
		FiberG:     fav.FiberG,
		Source:     model.SourceFavorite,
	}
	next, err := appendFood(st, iso, entry)
	if err != nil {
		return st, model.FoodEntry{}, err
	}
	return next, entry, nil
}

func DeleteFavorite(st model.State, id string) (model.State, error) {
	favs := make([]model.FavoriteMeal, 0, len(st.User.Favorites))
	for _, f := range st.User.Favorites {
		if f.ID != id {
			favs = append(favs, f)
		}
	}
	if len(favs) == len(st.User.Favorites) {
		return st, notFoundf("favorite %q", id)
	}
	st.User.Favorites = favs
	return st, nil
}

func ClearFavorites(st model.State) model.State {
	st.User.Favorites = []model.FavoriteMeal{}
	return st
}
